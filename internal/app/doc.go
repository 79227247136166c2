// Package app contains the core application logic. It defines the main App
// struct, its configuration, and the pipeline that turns a directory of
// hand-authored models into one merged model, decoupled from any specific
// entrypoint like a CLI.
package app
