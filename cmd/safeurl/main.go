// Package main provides the entry point for the safeurl CLI.
//
// safeurl extracts lexical features from URLs and classifies them as benign
// or malicious using a hosted machine-learning service. All features are
// computed locally; only the raw URL is sent to the classifier.
//
// Usage:
//
//	safeurl check <url>
//	safeurl check --input <file>
//
// See --help for all available options.
package main

// main is the entry point for safeurl.
func main() {
	Execute()
}
