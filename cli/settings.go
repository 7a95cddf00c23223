package cli

import (
	"fmt"
	"strconv"

	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/veloxuav/flightd/msgs"
)

type SettingType int

const (
	String SettingType = iota
	Float
	Bool
)

type settingsState int

const (
	showSettingsMenu settingsState = iota
	settingsExit
	settingsInput
	saveSettings
	reloadSettings
	defaultSettings
)

type settingsItem struct {
	title, desc string
	state       settingsState
	// JSON key of the setting inside FlightdSettings, for applySettings.
	Key  string
	Type SettingType
}

func (i settingsItem) Title() string       { return i.title }
func (i settingsItem) Description() string { return i.desc }
func (i settingsItem) FilterValue() string { return i.title }

type settingsModel struct {
	list         list.Model
	state        settingsState
	textInput    textinput.Model
	selectedItem settingsItem
	prompt       string
}

func (m settingsModel) Init() tea.Cmd {
	return nil
}

func (m settingsModel) Update(msg tea.Msg, mm *uiModel) (settingsModel, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if msg.Type == tea.KeyEnter && m.state == showSettingsMenu {
			it := m.list.SelectedItem().(settingsItem)
			m.selectedItem = it
			m.state = it.state
			switch m.state {
			case settingsExit:
				m.state = showSettingsMenu
				mm.state = showMenu
			case settingsInput:
				m.prompt = m.selectedItem.Title()
				m.textInput = textinput.New()
				m.textInput.Focus()
			case saveSettings:
				m.state = showSettingsMenu
				mm.state = showMenu
				sendInput(mm, msgs.FlightdIn{Type: msgs.InputSaveSettings})
			case reloadSettings:
				m.state = showSettingsMenu
				mm.state = showMenu
				sendInput(mm, msgs.FlightdIn{Type: msgs.InputReloadSettings})
			case defaultSettings:
				m.state = showSettingsMenu
				mm.state = showMenu
				sendInput(mm, msgs.FlightdIn{Type: msgs.InputLoadDefaultSettings})
			}
			return m, nil
		}
		if msg.Type == tea.KeyEnter && m.state == settingsInput {
			m.state = showSettingsMenu

			result := m.textInput.Value()
			input := msgs.FlightdIn{Type: msgs.InputApplySettings}

			switch m.selectedItem.Type {
			case String:
				if m.selectedItem.Key == "log_level" {
					input = msgs.FlightdIn{Type: msgs.InputSetLogLevel, Str: result}
				} else {
					input.Settings = fmt.Sprintf("{%q: %q}", m.selectedItem.Key, result)
				}
			case Bool:
				switch result {
				case "true", "false":
					input.Settings = fmt.Sprintf("{%q: %s}", m.selectedItem.Key, result)
				default:
					return m, nil
				}
			case Float:
				val, err := strconv.ParseFloat(result, 64)
				if err != nil {
					return m, nil
				}
				input.Settings = fmt.Sprintf("{%q: %g}", m.selectedItem.Key, val)
			}
			sendInput(mm, input)
			return m, nil
		}
		if msg.Type == tea.KeyEsc && m.state == settingsInput {
			m.state = showSettingsMenu
			return m, nil
		}
	case tea.WindowSizeMsg:
		h, v := docStyle.GetFrameSize()
		m.list.SetSize(msg.Width-h, msg.Height-v)
	}

	if m.state == settingsInput {
		var cmd tea.Cmd
		m.textInput, cmd = m.textInput.Update(msg)
		return m, cmd
	}

	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

func (m settingsModel) View() string {
	switch m.state {
	case settingsInput:
		return docStyle.Render(fmt.Sprintf(
			"%s\n\n%s\n\n%s",
			m.prompt,
			m.textInput.View(),
			"(esc to quit)",
		) + "\n")
	default:
		return docStyle.Render(m.list.View())
	}
}

func sendInput(mm *uiModel, input msgs.FlightdIn) {
	if err := mm.pub.Send(&input); err != nil {
		fmt.Printf("could not send input: %v\n", err)
	}
}

func getSettingsModel() settingsModel {
	items := []list.Item{
		settingsItem{
			title: "Cruise Speed",
			desc:  "The default horizontal speed flown between waypoints when the mission does not set one",
			Key:   "cruise_speed",
			Type:  Float,
			state: settingsInput,
		},
		settingsItem{
			title: "Max Horizontal Speed",
			desc:  "The hard ceiling on horizontal speed",
			Key:   "horizontal_vel_max",
			Type:  Float,
			state: settingsInput,
		},
		settingsItem{
			title: "Horizontal Acceleration",
			desc:  "The maximum horizontal acceleration used while planning and braking",
			Key:   "horizontal_accel",
			Type:  Float,
			state: settingsInput,
		},
		settingsItem{
			title: "Max Jerk",
			desc:  "The jerk limit shared by all axes",
			Key:   "max_jerk",
			Type:  Float,
			state: settingsInput,
		},
		settingsItem{
			title: "Max Climb Rate",
			desc:  "The maximum ascent speed",
			Key:   "vertical_vel_max_up",
			Type:  Float,
			state: settingsInput,
		},
		settingsItem{
			title: "Max Descent Rate",
			desc:  "The maximum descent speed",
			Key:   "vertical_vel_max_down",
			Type:  Float,
			state: settingsInput,
		},
		settingsItem{
			title: "Ascent Acceleration",
			desc:  "The maximum vertical acceleration while climbing",
			Key:   "vertical_accel_up",
			Type:  Float,
			state: settingsInput,
		},
		settingsItem{
			title: "Descent Acceleration",
			desc:  "The maximum vertical acceleration while descending",
			Key:   "vertical_accel_down",
			Type:  Float,
			state: settingsInput,
		},
		settingsItem{
			title: "Horizontal Trajectory Gain",
			desc:  "The proportional gain turning horizontal position error into velocity demand",
			Key:   "horizontal_traj_gain",
			Type:  Float,
			state: settingsInput,
		},
		settingsItem{
			title: "Vertical Trajectory Gain",
			desc:  "The proportional gain turning vertical position error into velocity demand",
			Key:   "vertical_traj_gain",
			Type:  Float,
			state: settingsInput,
		},
		settingsItem{
			title: "Altitude Acceptance",
			desc:  "The altitude tolerance below which a vertical setpoint counts as reached",
			Key:   "altitude_acceptance",
			Type:  Float,
			state: settingsInput,
		},
		settingsItem{
			title: "Wait For Yaw Alignment",
			desc:  "When enabled horizontal motion waits for the heading to align with the upcoming segment",
			Key:   "wait_for_yaw_aligned",
			Type:  Bool,
			state: settingsInput,
		},
		settingsItem{
			title: "Set Log Level",
			desc:  "Modify how verbose logging will be for the flightd system",
			Key:   "log_level",
			Type:  String,
			state: settingsInput,
		},
		settingsItem{
			title: "Save Settings",
			desc:  "Persists any updates to the settings across reboots",
			state: saveSettings,
		},
		settingsItem{
			title: "Reload Settings",
			desc:  "Discards unsaved changes and reloads the persisted settings",
			state: reloadSettings,
		},
		settingsItem{
			title: "Load Default Settings",
			desc:  "Resets all settings to their defaults without persisting them",
			state: defaultSettings,
		},
		settingsItem{
			title: "Return to Main Menu",
			desc:  "Exit settings configuration and return to the initial actions menu",
			state: settingsExit,
		},
	}

	listDelegate := list.NewDefaultDelegate()
	m := settingsModel{list: list.New(items, listDelegate, 0, 0)}
	m.list.Title = "Flightd Settings"
	return m
}
