/*
Package config loads the per network configuration.

Each network is configured by a JSON file named after it, for example
info/testnet.json:

	{
	  "rpc": "https://fullnode.testnet.sui.io:443",
	  "multisig": {
	    "signers": [
	      {"publicKey": "<hex>", "schemeType": "ed25519", "weight": 1}
	    ],
	    "threshold": 1
	  },
	  "deploy": {
	    "path": "./move",
	    "output": "deployed_addresses.json",
	    "objects": ["{package}::nft::AdminCap"],
	    "gasBudget": 500000000
	  }
	}

All sections are optional. Without the rpc value, the public fullnode of a
known network is used. A configuration is always validated before it is
returned or written.
*/
package config
