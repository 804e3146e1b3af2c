package conversion

import (
	"github.com/KirkDiggler/cobblemon-transporter/internal/clients/converter"
)

// ConvertInput lists files or directories to convert. Directories are
// expanded to the files the direction accepts, without recursing.
type ConvertInput struct {
	Direction converter.Direction
	Paths     []string
}

// ConvertedFile is the outcome for one input
type ConvertedFile struct {
	Path   string
	Result *converter.Result
	Err    error
}

// ConvertOutput reports every input in the order it was run
type ConvertOutput struct {
	Files     []*ConvertedFile
	Succeeded int
	Failed    int
}
