package cli

import (
	"fmt"
	"os"
	"time"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/veloxuav/flightd/msgs"
	ms "github.com/veloxuav/flightd/settings"
)

type mainState int

const (
	showMenu mainState = iota
	showSettings
	showOutput
)

var docStyle = lipgloss.NewStyle().Margin(1, 2)

type TickMsg time.Time

func tickEvery() tea.Cmd {
	return tea.Every(50*time.Millisecond, func(t time.Time) tea.Msg {
		return TickMsg(t)
	})
}

type uiModel struct {
	list              list.Model
	state             mainState
	settings          settingsModel
	output            outputModel
	pub               *msgs.Publisher[msgs.FlightdIn]
	sub               *msgs.Subscriber[msgs.TrajectorySetpoint]
	extendedSub       *msgs.Subscriber[msgs.FlightdExtendedOut]
	extendedData      msgs.FlightdExtendedOut
	extendedDataValid bool
}

type item struct {
	title, desc string
	state       mainState
}

func (i item) Title() string       { return i.title }
func (i item) Description() string { return i.desc }
func (i item) FilterValue() string { return i.title }

func initialModel(initial mainState) uiModel {
	items := []list.Item{
		item{title: "Settings", desc: "Modify settings of an active instance of flightd", state: showSettings},
		item{title: "Watch", desc: "Watch the live trajectory setpoints from flightd", state: showOutput},
	}

	listDelegate := list.NewDefaultDelegate()
	pub := msgs.NewPublisher[msgs.FlightdIn](msgs.FlightdInChannel)
	sub := msgs.NewSubscriber[msgs.TrajectorySetpoint](msgs.TrajectorySetpointChannel, true)
	extendedSub := msgs.NewSubscriber[msgs.FlightdExtendedOut](msgs.FlightdExtendedOutChannel, true)
	m := uiModel{
		list:        list.New(items, listDelegate, 0, 0),
		state:       initial,
		settings:    getSettingsModel(),
		pub:         &pub,
		sub:         &sub,
		extendedSub: &extendedSub,
	}
	m.list.Title = "Flightd Actions"
	return m
}

func (m uiModel) Init() tea.Cmd {
	return tickEvery()
}

func (m uiModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return m, tea.Quit
		}
		if msg.Type == tea.KeyEnter && m.state == showMenu && m.list.FilterState() != list.Filtering {
			it := m.list.SelectedItem().(item)
			m.state = it.state
			return m, nil
		}
	case tea.WindowSizeMsg:
		h, v := docStyle.GetFrameSize()
		m.list.SetSize(msg.Width-h, msg.Height-v)
		m.settings, _ = m.settings.Update(msg, &m)
		m.output, _ = m.output.Update(msg, &m)
	case TickMsg:
		extendedData, success := m.extendedSub.Read()
		if success {
			m.extendedData = extendedData
			ms.Settings.Unmarshal([]byte(extendedData.Settings))
			m.extendedDataValid = true
		}
		m.output, _ = m.output.Update(msg, &m)
		m.settings, _ = m.settings.Update(msg, &m)
		return m, tickEvery()
	}

	var cmd tea.Cmd
	switch m.state {
	case showSettings:
		m.settings, cmd = m.settings.Update(msg, &m)
	case showOutput:
		m.output, cmd = m.output.Update(msg, &m)
	default:
		m.list, cmd = m.list.Update(msg)
	}
	return m, cmd
}

func (m uiModel) View() string {
	switch m.state {
	case showSettings:
		return m.settings.View()
	case showOutput:
		return m.output.View(&m)
	}
	return docStyle.Render(m.list.View())
}

func runTUI(initial mainState) {
	p := tea.NewProgram(initialModel(initial), tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		fmt.Printf("Alas, there's been an error: %v", err)
		os.Exit(1)
	}
}
