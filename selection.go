package solar

// OnSelect is the single selection handler for every body. It runs the
// targeter to completion before returning. Unknown ids are logged and
// otherwise ignored: the camera keeps its current target and nothing is
// surfaced to the render loop.
func (s *Scene) OnSelect(id string) {
	prev := s.selection
	err := s.targeter.Select(id)
	if err != nil {
		s.log.Warn().Err(err).Str("target", id).Str("current", prev).Msg("selection ignored")
	} else {
		s.selection = id
		s.log.Info().
			Str("target", id).
			Str("previous", prev).
			Stringer("strategy", s.targeter.Strategy()).
			Msg("camera target selected")
	}
	if s.sink != nil {
		s.sink.EmitSelection(SelectionEvent{
			ID:       id,
			Previous: prev,
			Strategy: s.targeter.Strategy(),
			Accepted: err == nil,
			Err:      err,
		})
	}
}

// QueueSelect records a selection to be applied at the start of the next
// Update. Safe to call from any goroutine; the selection is applied whole
// before that frame's tick.
func (s *Scene) QueueSelect(id string) {
	s.queueMu.Lock()
	s.queue = append(s.queue, id)
	s.queueMu.Unlock()
}

// PendingSelections returns the number of queued selections.
func (s *Scene) PendingSelections() int {
	s.queueMu.Lock()
	defer s.queueMu.Unlock()
	return len(s.queue)
}

// drainQueue applies every queued selection in arrival order; the last one
// wins.
func (s *Scene) drainQueue() {
	s.queueMu.Lock()
	if len(s.queue) == 0 {
		s.queueMu.Unlock()
		return
	}
	pending := s.queue
	s.queue = nil
	s.queueMu.Unlock()

	for _, id := range pending {
		s.OnSelect(id)
	}
}
