/*
Package grayzip extracts a zip archive, looks up the PNG images found at the
top level of the extracted directory and writes a grayscale copy of each of
them into an output directory.

The package provides a command line interface. To check the supported flags type:

	$ grayzip --help

In case you wish to integrate the API in a self constructed environment here is a simple example:

	package main

	import (
		"log"

		"github.com/esimov/grayzip"
	)

	func main() {
		p := &grayzip.Processor{
			// Initialize struct variables
		}

		report, err := p.Execute(&grayzip.Ops{
			Src:      "myfile.zip",
			UnzipDir: "unzipped",
			OutDir:   "grayscaled",
		})
		if err != nil {
			log.Fatalf("error processing the archive: %v", err)
		}
		log.Printf("%d image(s) converted", report.Converted())
	}
*/
package grayzip
