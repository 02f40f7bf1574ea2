// Package model defines the data structures shared by the coverage engine,
// its adapters and its user interfaces.
package model

import "fmt"

// Path represents a file system path.
type Path string

// Location points at the declaration of a case in a source file.
type Location struct {
	File   Path `yaml:"file" msgpack:"file"`
	Line   int  `yaml:"line" msgpack:"line"`
	Column int  `yaml:"column,omitempty" msgpack:"column"`
}

func (l Location) String() string {
	if l.Column > 0 {
		return fmt.Sprintf("%s:%d:%d", l.File, l.Line, l.Column)
	}

	return fmt.Sprintf("%s:%d", l.File, l.Line)
}

// Less orders locations by file, line and column.
func (l Location) Less(o Location) bool {
	if l.File != o.File {
		return l.File < o.File
	}

	if l.Line != o.Line {
		return l.Line < o.Line
	}

	return l.Column < o.Column
}
