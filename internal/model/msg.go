package model

// Bubble Tea message types

// ErrorMsg represents an error message.
type ErrorMsg struct {
	Err error
}

// DatasetLoadedMsg is sent when every collection has been read from the source.
type DatasetLoadedMsg struct {
	Dataset Dataset
}
