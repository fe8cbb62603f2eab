package shared

// Upload is a file selected in a form, read into memory before submission.
type Upload struct {
	Name        string
	Content     []byte
	ContentType string
}

type imageState int

const (
	imageUnchanged imageState = iota
	imageCleared
	imageReplaced
)

// ImageField distinguishes the three states of a form's file input: untouched
// (keep the stored path), cleared, and replaced with a newly selected file.
// A single nullable field cannot express submit intent unambiguously.
type ImageField struct {
	state  imageState
	upload *Upload
}

func ImageUnchanged() ImageField {
	return ImageField{state: imageUnchanged}
}

func ImageCleared() ImageField {
	return ImageField{state: imageCleared}
}

func ImageReplaced(u Upload) ImageField {
	return ImageField{state: imageReplaced, upload: &u}
}

func (f ImageField) IsUnchanged() bool { return f.state == imageUnchanged }
func (f ImageField) IsCleared() bool   { return f.state == imageCleared }

// Replaced returns the pending upload when a new file was selected.
func (f ImageField) Replaced() (*Upload, bool) {
	if f.state != imageReplaced {
		return nil, false
	}
	return f.upload, true
}
