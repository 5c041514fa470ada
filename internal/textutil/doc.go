// Package textutil builds the file names winlaunch derives from user text:
// exported preset files and per-item lock files.
package textutil
