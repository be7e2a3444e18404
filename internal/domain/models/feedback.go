package models

// Feedback holds what the user sees after an operation: inline banners plus
// an optional blocking alert that is shown once.
type Feedback struct {
	Success string
	Error   string
	Alert   string
}

// SetSuccess shows a success banner and hides any previous error.
func (f *Feedback) SetSuccess(msg string) {
	f.Success = msg
	f.Error = ""
}

// SetError shows an error banner and hides any previous success.
func (f *Feedback) SetError(msg string) {
	f.Error = msg
	f.Success = ""
}

// PopAlert returns the pending alert and clears it.
func (f *Feedback) PopAlert() string {
	msg := f.Alert
	f.Alert = ""
	return msg
}
