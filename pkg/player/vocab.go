package player

import "fmt"

// Canned-phrase identifiers. Each names a file in the phrase folder;
// the configured extension is appended at playback time.

var hourPhrases = [12]string{
	"hour-01", "hour-02", "hour-03", "hour-04", "hour-05", "hour-06",
	"hour-07", "hour-08", "hour-09", "hour-10", "hour-11", "hour-12",
}

var minutePhrases = [12]string{
	"minute-00", "minute-05", "minute-10", "minute-15", "minute-20", "minute-25",
	"minute-30", "minute-35", "minute-40", "minute-45", "minute-50", "minute-55",
}

// numberPhrases covers spoken battery digits 0 through 16
var numberPhrases = [17]string{
	"number-00", "number-01", "number-02", "number-03", "number-04", "number-05",
	"number-06", "number-07", "number-08", "number-09", "number-10", "number-11",
	"number-12", "number-13", "number-14", "number-15", "number-16",
}

const (
	PhraseAM            = "am"
	PhrasePM            = "pm"
	PhrasePoint         = "point"
	PhraseVolts         = "volts"
	PhraseStartup       = "startup"
	PhraseOnDemandIntro = "on-demand-intro"
	PhraseUntil         = "until"
)

// TimePhrases builds the spoken form of a 24-hour time: 12-hour value,
// minute rounded down to the nearest 5, then AM or PM.
func TimePhrases(hour24, minute int) []string {
	hour12 := hour24 % 12
	if hour12 == 0 {
		hour12 = 12
	}
	meridiem := PhraseAM
	if hour24 >= 12 {
		meridiem = PhrasePM
	}
	return []string{
		hourPhrases[hour12-1],
		minutePhrases[(minute%60)/5],
		meridiem,
	}
}

// BatteryPhrases builds the spoken form of a battery voltage:
// whole volts, "point", tenths digit, "volts". Whole volts outside the
// 0-16 vocabulary is an explicit error rather than a silent
// out-of-range index.
func BatteryPhrases(volts float64) ([]string, error) {
	// Round once to tenths, then split, so the whole and tenths digits
	// always agree when the tenths carry across a volt boundary
	total := int(volts*10 + 0.5)
	if total < 0 || total/10 >= len(numberPhrases) {
		return nil, fmt.Errorf("battery voltage %.1f V outside announce vocabulary", volts)
	}
	whole, tenths := total/10, total%10
	return []string{
		numberPhrases[whole],
		PhrasePoint,
		numberPhrases[tenths],
		PhraseVolts,
	}, nil
}
