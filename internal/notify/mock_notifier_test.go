package notify

type mockNotifier struct {
	titles []string
	bodies []string
	err    error
}

func (m *mockNotifier) Notify(title, body string) error {
	if m.err != nil {
		return m.err
	}
	m.titles = append(m.titles, title)
	m.bodies = append(m.bodies, body)
	return nil
}
