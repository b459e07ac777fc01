package tui

// layout is where the map sits on screen, in cells.
type layout struct {
	originX, originY int
	mapW, mapH       int
	contentW         int
	contentH         int
}

func (m Model) layout() layout {
	contentH := max(4, m.height-headerHeight-footerHeight)
	contentW := max(10, m.width)
	lo := layout{originY: headerHeight, contentW: contentW, contentH: contentH, mapH: contentH}
	lo.mapW = contentW
	if m.showSidebar {
		lo.originX = sidebarWidth + 1
		lo.mapW = contentW - sidebarWidth - 1
	}
	lo.mapW = max(10, lo.mapW)
	return lo
}

// inMap reports whether terminal cell (cx, cy) is on the map.
func (lo layout) inMap(cx, cy int) bool {
	return cx >= lo.originX && cx < lo.originX+lo.mapW && cy >= lo.originY && cy < lo.originY+lo.mapH
}

// toMicro maps a terminal cell to the micro pixel at its center.
func (lo layout) toMicro(cx, cy int) (float64, float64) {
	return float64((cx-lo.originX)*2 + 1), float64((cy-lo.originY)*4 + 2)
}
