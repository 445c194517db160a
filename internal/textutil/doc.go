// Package textutil holds small string helpers shared by the commands.
package textutil
