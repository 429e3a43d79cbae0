// Package contract models contract definitions, negotiations and agreements.
//
// A contract definition offers the assets matched by its selector under an
// access policy and a contract policy. A consumer negotiates an offer by
// sending a Request; a finalized negotiation produces an Agreement.
package contract
