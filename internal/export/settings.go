package export

import (
	"context"

	"institute-events/internal/kv"
)

const (
	DefaultMainTitle     = "Rajasthan International Centre"
	DefaultSubTitle      = "Calendar of Events (Revised)"
	DefaultSubTitleColor = "#DC2626"
)

// Settings are the operator's saved document preferences. Pointer fields
// distinguish "not saved" from an explicit empty or false value.
type Settings struct {
	MainTitle         string  `json:"mainTitle,omitempty"`
	SubTitle          string  `json:"subTitle,omitempty"`
	SubTitleColor     string  `json:"subTitleColor,omitempty"`
	AdditionalDetails *string `json:"additionalDetails,omitempty"`
	CustomColors      Colors  `json:"customColors,omitempty"`
	ShowOrganizer     *bool   `json:"showOrganizer,omitempty"`
}

// Options is the fully resolved document configuration.
type Options struct {
	MainTitle         string    `json:"mainTitle"`
	SubTitle          string    `json:"subTitle"`
	SubTitleColor     string    `json:"subTitleColor"`
	AdditionalDetails *string   `json:"additionalDetails,omitempty"` // nil derives the text from the selection
	Colors            Colors    `json:"customColors"`
	ShowOrganizer     bool      `json:"showOrganizer"`
	Selection         Selection `json:"selection"`
}

func DefaultOptions() Options {
	return Options{
		MainTitle:     DefaultMainTitle,
		SubTitle:      DefaultSubTitle,
		SubTitleColor: DefaultSubTitleColor,
		Colors:        DefaultColors(),
		ShowOrganizer: true,
		Selection:     Selection{Month: AllValues, Category: AllValues},
	}
}

// Apply overrides the options field by field with whatever s carries.
func (s Settings) Apply(o Options) Options {
	if s.MainTitle != "" {
		o.MainTitle = s.MainTitle
	}
	if s.SubTitle != "" {
		o.SubTitle = s.SubTitle
	}
	if s.SubTitleColor != "" {
		o.SubTitleColor = s.SubTitleColor
	}
	if s.AdditionalDetails != nil {
		v := *s.AdditionalDetails
		o.AdditionalDetails = &v
	}
	if len(s.CustomColors) > 0 {
		o.Colors = o.Colors.Merge(s.CustomColors)
	}
	if s.ShowOrganizer != nil {
		o.ShowOrganizer = *s.ShowOrganizer
	}
	return o
}

// SettingsStore persists Settings per user.
type SettingsStore struct {
	kv kv.Store
}

func NewSettingsStore(store kv.Store) *SettingsStore {
	return &SettingsStore{kv: store}
}

func (s *SettingsStore) Get(ctx context.Context, userID string) (Settings, bool, error) {
	var settings Settings
	found, err := s.kv.Get(ctx, userID, kv.PDFSettingsKey, &settings)
	if err != nil {
		return Settings{}, false, err
	}
	return settings, found, nil
}

func (s *SettingsStore) Save(ctx context.Context, userID string, settings Settings) error {
	return s.kv.Set(ctx, userID, kv.PDFSettingsKey, settings)
}

func (s *SettingsStore) Clear(ctx context.Context, userID string) error {
	return s.kv.Clear(ctx, userID, kv.PDFSettingsKey)
}

// Options resolves the saved settings of a user on top of the defaults.
func (s *SettingsStore) Options(ctx context.Context, userID string) (Options, error) {
	saved, _, err := s.Get(ctx, userID)
	if err != nil {
		return Options{}, err
	}
	return saved.Apply(DefaultOptions()), nil
}
