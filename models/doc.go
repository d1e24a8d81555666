/*
Package models defines the data structures shared across the dynblocks
library.

Key Types:

FamilyDescriptor:
A named parametric shape family with a fixed parameter schema:

	family := &models.FamilyDescriptor{
	    Name: "DoorPanel",
	    Kind: models.ShapeRectangle,
	    Schema: []models.ParameterSpec{
	        {Name: "Width", Default: 0.9},
	        {Name: "Height", Default: 2.1},
	    },
	}

ParameterSet:
Concrete parameter values for one instance. Sets are canonicalized with
CanonicalKey for definition-cache lookup: names sorted, values rounded to
KeyPrecision decimals, so near-equal inputs share one generated definition.

InstanceRecord:
A placed occurrence of a family: host-assigned id, current values, and the
definition handle the instance points to.

RegistryState:
The JSON snapshot of families, the definition cache, and instance records
that is persisted into the document metadata store and reloaded on the next
script invocation.
*/
package models
