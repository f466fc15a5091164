/*
Package morph morphs between two images using delaunay triangulation.

Both images carry an ordered list of feature points marking the same landmarks.
Together with the four image corners they form the effective point sets,
which correspond index by index. The source set is triangulated once and every
triangle of the source image is drawn affinely mapped onto its position
interpolated towards the target set; the target image is warped the other way
round and the two are cross-faded.

The package provides a command line utility supporting various customization options.
Check the supported commands by typing:

	$ morph --help

Example to render the halfway frame of a morph:

	package main

	import (
		"context"
		"fmt"
		"os"

		"github.com/esimov/morph"
	)

	func main() {
		pair := morph.NewPair(srcPoints, dstPoints, nil)

		a, _ := os.Open("a.jpg")
		b, _ := os.Open("b.jpg")
		err := pair.Load(context.Background(), morph.LoadRaster(a), morph.LoadRaster(b), morph.DefaultMaxSize)
		if err != nil {
			fmt.Printf("Error loading images: %s", err.Error())
		}

		m, err := morph.NewMorph(pair, nil)
		if err != nil {
			fmt.Printf("Error on morph setup: %s", err.Error())
		}
		frame, err := m.Render(0.5)
		...
	}

Animated morphs are driven by a Controller, which eases the morph parameter
up and down following an ActivitySignal on every Scheduler tick.
*/
package morph
