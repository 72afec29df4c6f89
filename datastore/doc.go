// Package datastore opens a relational database connection from flat
// configuration entries and exposes the connection handle, dedicated
// sessions, and a reflected catalog of the live schema. Pooling is
// deliberately disabled: every session is a dedicated connection, and
// the host application owns lifecycle decisions beyond that.
package datastore
