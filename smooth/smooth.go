package smooth

import coretemp "github.com/milosgajdos/go-coretemp"

// RTS is Rauch Tung Striebel optimal filter smoother
type RTS interface {
	// coretemp.Smoother is filter smoother
	coretemp.Smoother
}
