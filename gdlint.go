package gdlint

// Version is reported by the command line tool.
const Version = "0.3.0"
