package switchboard

// Version is the library release, reported by `switchboard version`.
const Version = "0.1.0"
