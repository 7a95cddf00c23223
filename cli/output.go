package cli

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/veloxuav/flightd/msgs"
)

type outputModel struct {
	output msgs.TrajectorySetpoint
	valid  bool
}

func (m outputModel) Update(msg tea.Msg, mm *uiModel) (outputModel, tea.Cmd) {
	out, success := mm.sub.Read()
	if success {
		m.valid = true
		m.output = out
	}

	return m, nil
}

func (m outputModel) View(mm *uiModel) string {
	if !m.valid {
		return docStyle.Render("waiting for trajectory setpoints...\n")
	}
	return docStyle.Render(fmt.Sprintf(
		"position: %.2f %.2f %.2f\nvelocity: %.2f %.2f %.2f\nacceleration: %.2f %.2f %.2f\njerk: %.2f %.2f %.2f\nyaw: %.2f\nwants takeoff: %t\ncycle rate: %.1f Hz\nactive: %t",
		m.output.Position.X, m.output.Position.Y, m.output.Position.Z,
		m.output.Velocity.X, m.output.Velocity.Y, m.output.Velocity.Z,
		m.output.Acceleration.X, m.output.Acceleration.Y, m.output.Acceleration.Z,
		m.output.Jerk.X, m.output.Jerk.Y, m.output.Jerk.Z,
		m.output.Yaw,
		m.output.WantsTakeoff,
		mm.extendedData.CycleRateHz,
		mm.extendedData.Active,
	) + "\n")
}
