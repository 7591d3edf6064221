package config

import (
	"errors"
	"fmt"
	"io"
	"os"
	"reflect"
	"strings"

	"github.com/aristath/stockticker/internal/domain"
	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

// Parameters mirrors the parameters document. JSON documents are accepted
// since they are valid YAML.
type Parameters struct {
	Symbols         []string          `yaml:"symbols" validate:"required,min=1,dive,required"`
	WifiCredentials []WifiCredential  `yaml:"wifiCredentials" validate:"dive"`
	API             APIParameters     `yaml:"api"`
	Market          MarketParameters  `yaml:"market"`
	Display         DisplayParameters `yaml:"display"`
	Matrix          MatrixParameters  `yaml:"matrix"`
	System          SystemParameters  `yaml:"system"`
}

// WifiCredential is one network the device may join.
type WifiCredential struct {
	SSID     string `yaml:"ssid" json:"ssid" validate:"required"`
	Password string `yaml:"password" json:"-"`
}

// APIParameters select the quote provider and its request budget.
type APIParameters struct {
	Provider              string `yaml:"provider" validate:"required"`
	Mode                  string `yaml:"mode" validate:"required"`
	Key                   string `yaml:"key"`
	LiveRequestsPerDay    int    `yaml:"liveRequestsPerDay"`
	SandboxRequestsPerDay int    `yaml:"sandboxRequestsPerDay"`
	DemoIntervalMs        int    `yaml:"demoIntervalMs"`
}

// MarketParameters hold the session windows as "HH:MM-HH:MM" strings.
type MarketParameters struct {
	FetchPreMarketData   bool   `yaml:"fetchPreMarketData"`
	FetchAfterMarketData bool   `yaml:"fetchAfterMarketData"`
	PreMarket            string `yaml:"preMarket" validate:"required"`
	MarketHours          string `yaml:"marketHours" validate:"required"`
	AfterMarket          string `yaml:"afterMarket" validate:"required"`
	Holiday              bool   `yaml:"holiday"`
	HolidayCalendar      string `yaml:"holidayCalendar" validate:"omitempty,oneof=none us"`
}

// DisplayParameters configure the screen. An empty dim window never dims.
type DisplayParameters struct {
	NextSymbolDelay int    `yaml:"nextSymbolDelay" validate:"gte=0"`
	BrightnessMax   int    `yaml:"brightnessMax" validate:"gte=0,lte=255"`
	BrightnessMin   int    `yaml:"brightnessMin" validate:"gte=0,lte=255,ltefield=BrightnessMax"`
	DimWindow       string `yaml:"dimWindow"`
}

// MatrixParameters configure the LED matrix.
type MatrixParameters struct {
	MarketHoursPattern string `yaml:"marketHoursPattern"`
	AfterHoursPattern  string `yaml:"afterHoursPattern"`
	BrightnessMax      int    `yaml:"brightnessMax" validate:"gte=0,lte=255"`
	BrightnessMin      int    `yaml:"brightnessMin" validate:"gte=0,lte=255,ltefield=BrightnessMax"`
	DimWindow          string `yaml:"dimWindow"`
}

// SystemParameters hold device-wide settings.
type SystemParameters struct {
	TimeZone string `yaml:"timeZone"`
}

// DefaultParameters returns the values used for keys the document omits.
func DefaultParameters() Parameters {
	return Parameters{
		API: APIParameters{
			Provider:              "iexcloud",
			Mode:                  "demo",
			LiveRequestsPerDay:    1600,
			SandboxRequestsPerDay: 8640,
			DemoIntervalMs:        1000,
		},
		Market: MarketParameters{
			PreMarket:       "04:00-09:29",
			MarketHours:     "09:30-15:59",
			AfterMarket:     "16:00-21:59",
			HolidayCalendar: "none",
		},
		Display: DisplayParameters{
			NextSymbolDelay: 10,
			BrightnessMax:   255,
			BrightnessMin:   26,
		},
		Matrix: MatrixParameters{
			MarketHoursPattern: "gainers",
			AfterHoursPattern:  "pulse",
			BrightnessMax:      128,
			BrightnessMin:      10,
		},
		System: SystemParameters{
			TimeZone: "America/New_York",
		},
	}
}

var validate = newValidator()

// newValidator reports fields by their document names.
func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("yaml"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// LoadParameters reads and validates the parameters document at path.
func LoadParameters(path string) (*Parameters, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open parameters file: %w", err)
	}
	defer f.Close()

	return ParseParameters(f)
}

// ParseParameters decodes a parameters document on top of the defaults and
// validates it.
func ParseParameters(r io.Reader) (*Parameters, error) {
	params := DefaultParameters()

	decoder := yaml.NewDecoder(r)
	if err := decoder.Decode(&params); err != nil {
		return nil, fmt.Errorf("failed to decode parameters: %w", err)
	}

	if err := validate.Struct(&params); err != nil {
		return nil, validationError(err)
	}
	return &params, nil
}

// validationError reports the first failing field by its document path.
func validationError(err error) error {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) || len(verrs) == 0 {
		return err
	}
	first := verrs[0]
	field := strings.TrimPrefix(first.Namespace(), "Parameters.")
	return domain.NewConfigError(field, fmt.Errorf("failed %q validation", first.Tag()))
}
