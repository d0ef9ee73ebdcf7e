// Package cpid derives short printable pseudonym codes from a person's
// name and ID-number fragment.
//
// A CPID is a fixed 6-character label (three letters followed by three
// digits) printed on outbound mail and used as a join key when the
// authoritative numeric ID is unavailable. The derivation is a
// deterministic rotation-and-padding transform, not a security control:
// it is collision-prone and trivially reversible, and exists only to keep
// legal names off tracked correspondence.
package cpid
