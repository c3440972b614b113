package remind

type mockNotifier struct {
	calls   int
	habits  []string
	message string

	sendErr error
}

func (m *mockNotifier) SendReminder(habits []string, message string) error {
	m.calls++
	m.habits = habits
	m.message = message
	return m.sendErr
}
