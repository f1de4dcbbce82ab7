// chunkctl inspects the adaptive chunker from the command line: classify a
// document, preview its chunks, or list the per-category policies.
package main

func main() {
	Execute()
}
