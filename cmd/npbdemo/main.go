// npbdemo exercises the nested indicators against a real terminal: an
// outer bar with two levels of inner bars, then a rainbow pass. It is a
// visual harness, not part of the library surface.
package main

import (
	"flag"
	"fmt"
	"log"
	"time"

	"npb"
)

func main() {
	var (
		outerN  = flag.Int("outer", 10, "outer loop length")
		innerN  = flag.Int("inner", 15, "inner loop length")
		delay   = flag.Duration("delay", 2*time.Millisecond, "work simulated per innermost element")
		rainbow = flag.Bool("rainbow", false, "run the rainbow pass only")
	)
	flag.Parse()

	if *rainbow {
		run(*outerN, *innerN, *delay, npb.Options{Rainbow: true})
		return
	}
	run(*outerN, *innerN, *delay, npb.Options{})
}

func run(outerN, innerN int, delay time.Duration, base npb.Options) {
	outerOpts := base
	outerOpts.Desc = "master"
	outer, err := npb.N(outerN, outerOpts)
	if err != nil {
		log.Fatal(err)
	}
	for i := range outer {
		innerOpts := base
		innerOpts.Desc = fmt.Sprintf("sub %d", i)
		inner, err := npb.N(innerN, innerOpts)
		if err != nil {
			log.Fatal(err)
		}
		for j := range inner {
			leafOpts := base
			leafOpts.Desc = fmt.Sprintf("leaf %d.%d", i, j)
			leaf, err := npb.N(10, leafOpts)
			if err != nil {
				log.Fatal(err)
			}
			for range leaf {
				time.Sleep(delay)
			}
		}
	}
}
