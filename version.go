package kixpr

// Version is the front-end version reported by the CLI.
const Version = "0.1.0"
