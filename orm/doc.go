/*
Package orm provides an easy to use db wrapper

Models are stored under a bucket specific prefix and
serialized with the barter codec. A bucket may maintain
an auto incremented id sequence for its models.
*/
package orm
