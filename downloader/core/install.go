package core

// Installation describes a runtime that was just downloaded and extracted.
type Installation struct {
	Kind     Kind
	Family   string
	Name     string
	RemoteID string
	Size     int64
	Dir      string
}
