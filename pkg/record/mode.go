package record

// Mode selects the conversion variant. Edit modes alter required-ness and
// field visibility in mode-aware converters.
type Mode string

const (
	ModeDefault     Mode = "default"
	ModeEdit        Mode = "edit"
	ModeEditProcess Mode = "edit-process"
)

// Editing reports whether the mode is one of the edit variants.
func (m Mode) Editing() bool {
	return m == ModeEdit || m == ModeEditProcess
}

func (m Mode) String() string {
	if m == "" {
		return string(ModeDefault)
	}
	return string(m)
}
