/*
Package utils contains decorators that are shared by every handler chain:
panic recovery, logging and savepoints.
*/
package utils
