// Command objectctl inspects and converts object-graph streams captured
// by pkg/serializer: binary, text, and JSON node encodings of an
// Intermediate Serialization Tree.
package main

func main() {
	execute()
}
