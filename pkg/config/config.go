package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"gopkg.in/yaml.v2"
)

// Config represents the foxd configuration
type Config struct {
	Station struct {
		Callsign string `yaml:"callsign"`
	} `yaml:"station"`

	Schedule struct {
		// Daily active window for Scheduled mode ("HH:MM", 24-hour)
		StartTime string `yaml:"start_time"`
		StopTime  string `yaml:"stop_time"`

		// Working time preset shown when the time-set loop starts
		PowerUpTime string `yaml:"power_up_time"`

		// Seconds between message slot starts
		MessageIntervalS int `yaml:"message_interval_s"`

		// On-Demand session length in minutes
		OnDemandRunM int `yaml:"on_demand_run_m"`
	} `yaml:"schedule"`

	Battery struct {
		MinVoltage       float64 `yaml:"min_voltage"`
		CorrectionFactor float64 `yaml:"correction_factor"`
	} `yaml:"battery"`

	Detect struct {
		// Receive-level source: "adc" or "audio"
		Source string `yaml:"source"`

		RxDetectMinV float64 `yaml:"rx_detect_min_v"`
		RxDetectMinT float64 `yaml:"rx_detect_min_t"`
	} `yaml:"detect"`

	Audio struct {
		MessageDir  string  `yaml:"message_dir"`
		PhraseDir   string  `yaml:"phrase_dir"`
		Extension   string  `yaml:"extension"`
		PlayCommand string  `yaml:"play_command"`
		RecCommand  string  `yaml:"rec_command"`
		SampleRate  int     `yaml:"sample_rate"`
		TxDelay     float64 `yaml:"tx_delay"`
	} `yaml:"audio"`

	Hardware struct {
		EnableGPIO      bool   `yaml:"enable_gpio"`
		GPIOChip        string `yaml:"gpio_chip"`
		PTTPin          int    `yaml:"ptt_pin"`
		HourButtonPin   int    `yaml:"hour_button_pin"`
		MinuteButtonPin int    `yaml:"minute_button_pin"`
		RunButtonPin    int    `yaml:"run_button_pin"`
		ADCDevice       string `yaml:"adc_device"`
		ADCBits         int    `yaml:"adc_bits"`
		BatteryChannel  int    `yaml:"battery_channel"`
		RxLevelChannel  int    `yaml:"rx_level_channel"`
	} `yaml:"hardware"`

	Logging struct {
		Level      string `yaml:"level"`
		File       string `yaml:"file"`
		Console    bool   `yaml:"console"`
		MaxSize    int    `yaml:"max_size"`
		MaxBackups int    `yaml:"max_backups"`
		MaxAge     int    `yaml:"max_age"`
		Compress   bool   `yaml:"compress"`
	} `yaml:"logging"`
}

// LoadConfig loads configuration from a YAML file
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var config Config
	if err := yaml.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	// Set defaults
	if config.Schedule.StartTime == "" {
		config.Schedule.StartTime = "08:00"
	}
	if config.Schedule.StopTime == "" {
		config.Schedule.StopTime = "20:00"
	}
	if config.Schedule.PowerUpTime == "" {
		config.Schedule.PowerUpTime = "10:00"
	}
	if config.Schedule.MessageIntervalS == 0 {
		config.Schedule.MessageIntervalS = 60
	}
	if config.Schedule.OnDemandRunM == 0 {
		config.Schedule.OnDemandRunM = 30
	}
	if config.Battery.MinVoltage == 0 {
		config.Battery.MinVoltage = 12.2
	}
	if config.Battery.CorrectionFactor == 0 {
		config.Battery.CorrectionFactor = 5.0
	}
	if config.Detect.Source == "" {
		config.Detect.Source = "adc"
	}
	if config.Detect.RxDetectMinV == 0 {
		config.Detect.RxDetectMinV = 0.2
	}
	if config.Detect.RxDetectMinT == 0 {
		config.Detect.RxDetectMinT = 1.5
	}
	if config.Audio.MessageDir == "" {
		config.Audio.MessageDir = "/var/lib/foxd/messages"
	}
	if config.Audio.PhraseDir == "" {
		config.Audio.PhraseDir = "/var/lib/foxd/phrases"
	}
	if config.Audio.Extension == "" {
		config.Audio.Extension = ".wav"
	}
	if config.Audio.PlayCommand == "" {
		config.Audio.PlayCommand = "aplay -q"
	}
	if config.Audio.RecCommand == "" {
		config.Audio.RecCommand = "arecord -q -f S16_LE -c 1 -t raw"
	}
	if config.Audio.SampleRate == 0 {
		config.Audio.SampleRate = 8000
	}
	if config.Audio.TxDelay == 0 {
		config.Audio.TxDelay = 0.2
	}
	if config.Hardware.GPIOChip == "" {
		config.Hardware.GPIOChip = "gpiochip0"
	}
	if config.Hardware.PTTPin == 0 {
		config.Hardware.PTTPin = 17
	}
	if config.Hardware.HourButtonPin == 0 {
		config.Hardware.HourButtonPin = 22
	}
	if config.Hardware.MinuteButtonPin == 0 {
		config.Hardware.MinuteButtonPin = 23
	}
	if config.Hardware.RunButtonPin == 0 {
		config.Hardware.RunButtonPin = 24
	}
	if config.Hardware.ADCDevice == "" {
		config.Hardware.ADCDevice = "/sys/bus/iio/devices/iio:device0"
	}
	if config.Hardware.ADCBits == 0 {
		config.Hardware.ADCBits = 16
	}
	if config.Hardware.RxLevelChannel == 0 {
		config.Hardware.RxLevelChannel = 1
	}
	if config.Logging.Level == "" {
		config.Logging.Level = "info"
	}
	if config.Logging.MaxSize == 0 {
		config.Logging.MaxSize = 10
	}
	if config.Logging.MaxBackups == 0 {
		config.Logging.MaxBackups = 3
	}
	if config.Logging.MaxAge == 0 {
		config.Logging.MaxAge = 30
	}

	return &config, nil
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	if c.Station.Callsign == "" {
		return fmt.Errorf("station callsign is required")
	}

	start, err := ParseTimeOfDay(c.Schedule.StartTime)
	if err != nil {
		return fmt.Errorf("invalid start_time: %w", err)
	}
	stop, err := ParseTimeOfDay(c.Schedule.StopTime)
	if err != nil {
		return fmt.Errorf("invalid stop_time: %w", err)
	}
	if stop < start {
		return fmt.Errorf("stop_time %s is before start_time %s", c.Schedule.StopTime, c.Schedule.StartTime)
	}
	if _, err := ParseTimeOfDay(c.Schedule.PowerUpTime); err != nil {
		return fmt.Errorf("invalid power_up_time: %w", err)
	}
	if c.Schedule.MessageIntervalS <= 0 {
		return fmt.Errorf("message_interval_s must be positive")
	}
	if c.Schedule.OnDemandRunM <= 0 {
		return fmt.Errorf("on_demand_run_m must be positive")
	}
	if c.Detect.Source != "adc" && c.Detect.Source != "audio" {
		return fmt.Errorf("detect source must be \"adc\" or \"audio\", got %q", c.Detect.Source)
	}
	if c.Detect.RxDetectMinT < 0 {
		return fmt.Errorf("rx_detect_min_t must not be negative")
	}
	if c.Battery.MinVoltage < 0 {
		return fmt.Errorf("battery min_voltage must not be negative")
	}
	if c.Hardware.EnableGPIO {
		pins := map[string]int{
			"ptt_pin":           c.Hardware.PTTPin,
			"hour_button_pin":   c.Hardware.HourButtonPin,
			"minute_button_pin": c.Hardware.MinuteButtonPin,
			"run_button_pin":    c.Hardware.RunButtonPin,
		}
		for name, pin := range pins {
			if pin < 0 || pin > 53 {
				return fmt.Errorf("%s %d out of range", name, pin)
			}
		}
	}
	return nil
}

// ParseTimeOfDay parses an "HH:MM" string into minutes since midnight
func ParseTimeOfDay(s string) (int, error) {
	parts := strings.SplitN(s, ":", 2)
	if len(parts) != 2 {
		return 0, fmt.Errorf("time of day %q is not HH:MM", s)
	}
	hour, err := strconv.Atoi(parts[0])
	if err != nil {
		return 0, fmt.Errorf("time of day %q has bad hour: %w", s, err)
	}
	minute, err := strconv.Atoi(parts[1])
	if err != nil {
		return 0, fmt.Errorf("time of day %q has bad minute: %w", s, err)
	}
	if hour < 0 || hour > 23 || minute < 0 || minute > 59 {
		return 0, fmt.Errorf("time of day %q out of range", s)
	}
	return hour*60 + minute, nil
}

// StartMinutes returns the scheduled window start as minutes since midnight.
// Validate must have been called first.
func (c *Config) StartMinutes() int {
	m, _ := ParseTimeOfDay(c.Schedule.StartTime)
	return m
}

// StopMinutes returns the scheduled window stop as minutes since midnight
func (c *Config) StopMinutes() int {
	m, _ := ParseTimeOfDay(c.Schedule.StopTime)
	return m
}

// PowerUpMinutes returns the power-up working time as minutes since midnight
func (c *Config) PowerUpMinutes() int {
	m, _ := ParseTimeOfDay(c.Schedule.PowerUpTime)
	return m
}
