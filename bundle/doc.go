/*
Package bundle persists partial signatures between the sign and combine
steps of a multisig authorization.

A bundle is a JSON file keyed by transaction digest. Each entry keeps the
transaction bytes and at most one signature per signer:

	{
	  "<digest>": {
	    "txBytes": "<base64>",
	    "signatures": {
	      "<signer address>": "<base64 signature>"
	    }
	  }
	}

Access to the file is not synchronized. Running two signing processes
against the same bundle at the same time may lose a signature.
*/
package bundle
