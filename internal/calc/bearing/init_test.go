package bearing

import "github.com/cpmech/gosl/chk"

func verbose() {
	chk.Verbose = true
}
