package nbt_test

import (
	"testing"

	"github.com/stretchr/testify/suite"

	"github.com/KirkDiggler/cobblemon-transporter/internal/errors"
	"github.com/KirkDiggler/cobblemon-transporter/internal/nbt"
)

type TreeTestSuite struct {
	suite.Suite
}

func TestTreeSuite(t *testing.T) {
	suite.Run(t, new(TreeTestSuite))
}

func (s *TreeTestSuite) TestSetKeepsPosition() {
	c := nbt.NewCompound().
		Set("a", nbt.Int(1)).
		Set("b", nbt.Int(2)).
		Set("a", nbt.Int(3))

	s.Equal([]string{"a", "b"}, c.Keys())
	v, _ := c.Integer("a")
	s.Equal(int64(3), v)

	c.Delete("a")
	s.Equal([]string{"b"}, c.Keys())
	s.False(c.Has("a"))
}

func (s *TreeTestSuite) TestTypedGetters() {
	c := nbt.NewCompound().
		Set("level", nbt.Short(12)).
		Set("scale", nbt.Float(0.5)).
		Set("name", nbt.String("x"))

	n, ok := c.Integer("level")
	s.True(ok)
	s.Equal(int64(12), n)

	f, ok := c.Number("scale")
	s.True(ok)
	s.InDelta(0.5, f, 1e-9)

	_, ok = c.Integer("name")
	s.False(ok)
	_, ok = c.GetString("level")
	s.False(ok)
	_, ok = c.Compound("name")
	s.False(ok)
}

func (s *TreeTestSuite) TestCloneIsDeep() {
	inner := nbt.NewCompound().Set("x", nbt.Int(1))
	c := nbt.NewCompound().Set("inner", inner).Set("ids", nbt.IntList(1, 2))

	clone := c.Clone()
	inner.Set("x", nbt.Int(2))
	ids, _ := c.List("ids")
	s.Require().NoError(ids.Append(nbt.Int(3)))

	cloneInner, _ := clone.Compound("inner")
	x, _ := cloneInner.Integer("x")
	s.Equal(int64(1), x)
	cloneIDs, _ := clone.List("ids")
	s.Equal(2, cloneIDs.Len())
}

func (s *TreeTestSuite) TestListAppendRules() {
	l := nbt.NewList(nbt.KindEnd)
	s.Require().NoError(l.Append(nbt.String("a")))
	s.Equal(nbt.KindString, l.Elem())

	err := l.Append(nbt.Int(1))
	s.True(errors.IsInvalidArgument(err))

	l.Clear()
	s.Equal(0, l.Len())
	s.Equal(nbt.KindString, l.Elem())
}

func (s *TreeTestSuite) TestEqualDistinguishesKinds() {
	s.False(nbt.Equal(nbt.Int(1), nbt.Long(1)))
	s.True(nbt.Equal(nbt.IntList(1, 2), nbt.IntList(1, 2)))
	s.False(nbt.Equal(nbt.IntList(1, 2), nbt.IntList(2, 1)))

	a := nbt.NewCompound().Set("a", nbt.Int(1)).Set("b", nbt.Int(2))
	b := nbt.NewCompound().Set("b", nbt.Int(2)).Set("a", nbt.Int(1))
	s.False(nbt.Equal(a, b), "key order is significant")
}

func (s *TreeTestSuite) TestEnsureCompound() {
	c := nbt.NewCompound().Set("PersistentData", nbt.String("wrong kind"))
	pd := c.EnsureCompound("PersistentData")
	pd.Set("x", nbt.Int(1))

	got, ok := c.Compound("PersistentData")
	s.Require().True(ok)
	s.True(got.Has("x"))
}
