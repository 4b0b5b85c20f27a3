package capture

import "image"

type noCursor struct{}

func (noCursor) CursorPosition() (image.Point, bool) { return image.Point{}, false }
