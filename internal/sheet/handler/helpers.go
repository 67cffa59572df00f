package handler

import (
	"csvedit/internal/command"
	"csvedit/internal/sheet/service"
)

// done pairs the session status with err. The status is filled in on
// failure too, so the view can redraw from a consistent state.
func done(s *service.Session, err error) (command.Result, error) {
	return command.Result{Status: s.Status()}, err
}

// selection falls back to the focused index when nothing is selected.
func selection(sel []int, focus int) []int {
	if len(sel) > 0 {
		return sel
	}
	return []int{focus}
}
