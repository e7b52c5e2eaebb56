package state

// Reduce applies action to s and returns the new state together with an
// optional follow-up action for the orchestrator. It performs no I/O and
// never blocks; unknown actions leave the state untouched.
func Reduce(s AppState, action Action) (AppState, Action) {
	switch a := action.(type) {

	// ===== FEED =====

	case ItemsAction:
		s.Items = a.Items
		s.Requested = a.Requested
		s.Total = a.Total
		s.Cached = a.Cached
		s.Loading = false
		s.LastError = nil
		s.ScrollOffset = 0
		if len(s.Items) == 0 {
			s.SelectedIndex = -1
		} else {
			s.SelectedIndex = 0
		}
		return s, nil

	case FetchMoreAction:
		// Pagination lives in the orchestrator.
		return s, a

	case FetchFailedAction:
		s.LastError = a.Err
		return s, nil

	case ErrorAction:
		s.LastError = a.Err
		return s, nil

	// ===== NAVIGATION =====

	case NextSelectionAction:
		if len(s.Items) == 0 {
			return s, nil
		}
		s.SelectedIndex = min(max(s.SelectedIndex+1, 0), len(s.Items)-1)
		s.updateScrollVisibility()
		return s, nil

	case PrevSelectionAction:
		if len(s.Items) == 0 {
			return s, nil
		}
		s.SelectedIndex = max(s.SelectedIndex-1, 0)
		s.updateScrollVisibility()
		return s, nil

	case ActivateAction:
		return s, s.openSelected()

	case ClickRowAction:
		idx := s.ScrollOffset + a.Row
		if a.Row < 0 || idx >= len(s.Items) || (s.VisibleLines() > 0 && a.Row >= s.VisibleLines()) {
			return s, nil
		}
		s.SelectedIndex = idx
		s.updateScrollVisibility()
		if a.Double {
			return s, s.openSelected()
		}
		return s, nil

	// ===== TERMINAL =====

	case SetInputEnabledAction:
		s.InputEnabled = a.Enabled
		return s, nil

	case ResizeAction:
		s.ScreenWidth = a.Width
		s.ScreenHeight = a.Height
		s.updateScrollVisibility()
		return s, nil

	case SuspendAction:
		return s, a

	// ===== VIEW =====

	case YankURLAction:
		it, ok := s.SelectedItem()
		if !ok || !it.HasURL() {
			return s, nil
		}
		return s, CopyToClipboardAction{Text: it.URL}

	case YankedAction:
		if a.Err != nil {
			s.LastError = a.Err
			return s, nil
		}
		s.LastYankTime = a.At
		return s, nil

	case HelpToggleAction:
		s.HelpVisible = !s.HelpVisible
		return s, nil

	// ===== APPLICATION =====

	case QuitAction:
		s.QuitRequested = true
		return s, nil
	}

	return s, nil
}

func (s AppState) openSelected() Action {
	it, ok := s.SelectedItem()
	if !ok || !it.HasURL() {
		return nil
	}
	return OpenExternalAction{URL: it.URL}
}
