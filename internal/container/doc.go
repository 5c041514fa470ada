// Package container loads the isolated Windows environments shortcuts run in.
//
// Each container lives in <containers dir>/xuser-<id>/ with its settings in a
// JSON ".container" file. Desktop shortcuts sit under the Wine user's Desktop
// directory and icons under .local/share/icons/hicolor/<N>x<N>/apps. Unknown
// keys in .container survive a Save.
package container
