package quoteflow

// Version is the release of the quoteflow module.
var Version = "0.3.0"
