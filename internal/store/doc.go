// Package store provides abstractions for data persistence. Each entity
// gets an interface with simple create/get/query/update/delete operations
// plus a WithTx variant so services can compose multiple operations into
// one transaction.
package store
