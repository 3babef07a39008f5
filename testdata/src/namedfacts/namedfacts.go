// Package namedfacts covers imported functions that are sinks by name and
// also carry a fact.
package namedfacts

import "namedfacts/lib"

// badFail reports the configured sink, not what lib.Fail reaches.
func badFail() { // want badFail:`reaches\(namedfacts/lib.Fail\)` `possible panic spot found in "namedfacts.badFail"`
	lib.Fail("stop")
}
