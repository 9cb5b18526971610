/*
Package x contains the helpers shared by all extensions. Each subpackage is an
extension that registers its own handlers with the application router.
*/
package x
