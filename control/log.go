package control

import "log"

// Logf is used for everything the loop reports. Replace it with SetLogger
var Logf = log.Printf

// SetLogger replaces Logf. A nil logger mutes the loop
func SetLogger(logf func(format string, v ...any)) {
	if logf == nil {
		Logf = func(string, ...any) {}
		return
	}
	Logf = logf
}
