package sorting

// SortInput names the record directory and the folder that receives the
// GenN subfolders. An empty Dest sorts in place.
type SortInput struct {
	Dir  string
	Dest string
}

// SortedFile is the outcome for one record file. Err is set when the file
// stayed where it was.
type SortedFile struct {
	Name       string
	Species    string
	DexNumber  int
	Generation int
	Path       string
	Err        error
}

// SortOutput lists every file in directory order
type SortOutput struct {
	Files  []*SortedFile
	Moved  int
	Failed int
}
