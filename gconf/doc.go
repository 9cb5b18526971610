/*
Package gconf implements a configuration store intended to be used as a global,
in-database configuration.

Every extension keeps a single configuration object in the database under the
"_c:<package name>" key. The object is validated before being stored and is
initialized from the "conf" section of the genesis file.

Not being able to load a configuration is a critical condition for the
application. Extensions should refuse to process any message until a valid
configuration is present.
*/
package gconf
