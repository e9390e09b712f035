package cli

import (
	"strconv"

	"github.com/julianstephens/agenda/internal/constants"
	"github.com/julianstephens/agenda/internal/router"
)

type SettingsCmd struct {
	List  bool `help:"List current settings."`
	Reset bool `help:"Restore the default settings."`

	StartHour *int    `help:"First hour of the daily timeline (0-24)."`
	EndHour   *int    `help:"Last hour of the daily timeline (0-24)."`
	Interval  *int    `help:"Slot interval in minutes (15, 30 or 60)."`
	Color     *string `help:"Accent color."`
	Font      *string `help:"Display font."`
	Layout    *string `help:"Display layout."`
	ViewMode  *string `help:"Default view (day or week)."`
}

func (c *SettingsCmd) Run(ctx *Context) error {
	r := ctx.Router()

	if c.Reset {
		if _, err := r.Dispatch(router.ResetSettings{}); err != nil {
			return err
		}
		ctx.println("Settings restored to defaults.")
	}

	var changes []router.SetSetting
	if c.StartHour != nil {
		changes = append(changes, router.SetSetting{Field: constants.SettingStartHour, Value: strconv.Itoa(*c.StartHour)})
	}
	if c.EndHour != nil {
		changes = append(changes, router.SetSetting{Field: constants.SettingEndHour, Value: strconv.Itoa(*c.EndHour)})
	}
	if c.Interval != nil {
		changes = append(changes, router.SetSetting{Field: constants.SettingInterval, Value: strconv.Itoa(*c.Interval)})
	}
	if c.Color != nil {
		changes = append(changes, router.SetSetting{Field: constants.SettingColor, Value: *c.Color})
	}
	if c.Font != nil {
		changes = append(changes, router.SetSetting{Field: constants.SettingFont, Value: *c.Font})
	}
	if c.Layout != nil {
		changes = append(changes, router.SetSetting{Field: constants.SettingLayout, Value: *c.Layout})
	}
	if c.ViewMode != nil {
		changes = append(changes, router.SetSetting{Field: constants.SettingViewMode, Value: *c.ViewMode})
	}

	// Hours are applied in the order that keeps the pair valid when both
	// move past each other.
	if c.StartHour != nil && c.EndHour != nil && *c.StartHour > r.Session().Settings.EndHour {
		changes[0], changes[1] = changes[1], changes[0]
	}

	for _, change := range changes {
		if _, err := r.Dispatch(change); err != nil {
			return err
		}
	}
	if len(changes) > 0 {
		ctx.println("Settings updated successfully.")
	}

	if c.List || (len(changes) == 0 && !c.Reset) {
		s := r.Session().Settings
		ctx.println("Current Settings:")
		ctx.printf("  Start Hour: %d\n", s.StartHour)
		ctx.printf("  End Hour:   %d\n", s.EndHour)
		ctx.printf("  Interval:   %d min\n", s.Interval)
		ctx.printf("  View Mode:  %s\n", s.ViewMode)
		ctx.printf("  Color:      %s\n", s.Color)
		ctx.printf("  Font:       %s\n", s.Font)
		ctx.printf("  Layout:     %s\n", s.Layout)
	}
	return nil
}
