// Package userdata manages the ~/.lettuce/ directory: the config file, the
// log directory and saved host journals. It resolves paths (honouring the
// LETTUCE_HOME override), creates the layout and checks its health for
// doctor.
package userdata
