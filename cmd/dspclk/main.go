// Dspclk exercises the clock-frequency model of the audio DSP platform from
// the command line.
package main

func main() {
	Execute()
}
