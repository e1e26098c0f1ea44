package headless

import (
	zone "github.com/lrstanley/bubblezone"

	headlessview "tripagent-icongen/internal/ui/headless/view"
)

func (m *headlessModel) runtimeView() headlessview.Runtime {
	return headlessview.Runtime{
		BuildVersion: m.buildVersion,
		Running:      m.running,
		Busy:         m.busy,
		Status:       m.status,
		Tone:         m.tone,
		Targets:      m.targetRows,
		HealthDetail: m.healthDetail,
	}
}

func (m *headlessModel) View() string {
	if m.quitting {
		return "Shutting down..."
	}
	return zone.Scan(headlessview.RenderApp(&m.ui, m.runtimeView()))
}
