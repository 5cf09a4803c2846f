package enc424j600

import "time"

// SleepDelay implements DelayProvider with time.Sleep, sufficient on both
// the periph.io/Linux and TinyGo targets since the standard time package is
// available on both.
type SleepDelay struct{}

// DelayUs blocks for us microseconds.
func (SleepDelay) DelayUs(us uint16) {
	time.Sleep(time.Duration(us) * time.Microsecond)
}
