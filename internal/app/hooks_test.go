package app

// SetBeforeRender installs f to run inside View's recovered section.
func SetBeforeRender(s *Session, f func()) {
	s.mu.Lock()
	s.beforeRender = f
	s.mu.Unlock()
}
