package view

// bubblezone identifiers for every clickable region of the dashboard.
const (
	ZoneTabOverview = "tab-overview"
	ZoneTabSettings = "tab-settings"

	ZoneWatchToggle = "overview-watch"
	ZoneGenerate    = "overview-generate"
	ZoneCheck       = "overview-check"
	ZoneLogsToggle  = "overview-logs"
	ZoneQuit        = "overview-quit"
	ZoneLogsDebug   = "logs-debug"

	ZoneSettingsOutDir    = "settings-out-dir"
	ZoneSettingsBrowse    = "settings-browse"
	ZoneSettingsIco       = "settings-ico"
	ZoneSettingsAutoWatch = "settings-auto-watch"
	ZoneSettingsSave      = "settings-save"
	ZoneSettingsCancel    = "settings-cancel"

	ZoneDialogQuitStay = "dialog-quit-stay"
	ZoneDialogQuitExit = "dialog-quit-exit"
	ZoneDialogDismiss  = "dialog-dismiss"
)

// hoverZones drive hover styling; buttons light up through focus instead.
var hoverZones = []string{ZoneTabOverview, ZoneTabSettings}
