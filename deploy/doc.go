/*
Package deploy publishes a Move package and records the created objects.

The package is compiled by the sui binary, published in a transaction that
also transfers the UpgradeCap to the deployer, and the publish result is
searched for the package id and each expected object type. The artifact is
written only when every expected object is found.
*/
package deploy
