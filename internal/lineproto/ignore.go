package lineproto

// IgnoreSet is a set of flattened field paths excluded from encoding.
// Membership covers the whole subtree rooted at the path. Read-only
// after construction, safe for concurrent use.
type IgnoreSet map[string]struct{}

// NewIgnoreSet builds an IgnoreSet from the given paths.
func NewIgnoreSet(paths ...string) IgnoreSet {
	s := make(IgnoreSet, len(paths))
	for _, p := range paths {
		s[p] = struct{}{}
	}
	return s
}

// Contains reports whether path is excluded.
func (s IgnoreSet) Contains(path string) bool {
	_, ok := s[path]
	return ok
}

// DefaultIgnorePaths lists the flattened paths dropped from beacon
// event payloads. These are large opaque hashes, signatures and bit
// vectors that would explode downstream cardinality without carrying
// any aggregatable signal.
var DefaultIgnorePaths = []string{
	"aggregation_bits",
	"signature",
	"data_source_root",
	"data_target_root",
	"block",
	"state",
	"previous_duty_dependent_root",
	"current_duty_dependent_root",
	"signed_header_1_message_parent_root",
	"signed_header_1_message_state_root",
	"signed_header_1_message_body_root",
	"signed_header_1_signature",
	"signed_header_2_message_parent_root",
	"signed_header_2_message_state_root",
	"signed_header_2_message_body_root",
	"signed_header_2_signature",
	"attestation_1_data_source_root",
	"attestation_1_data_target_root",
	"attestation_1_signature",
	"attestation_2_data_source_root",
	"attestation_2_data_target_root",
	"attestation_2_signature",
	"message_from_bls_pubkey",
	"message_to_execution_address",
	"message_contribution_beacon_block_root",
	"old_head_block",
	"new_head_block",
	"old_head_state",
	"new_head_state",
	"message_contribution_aggregation_bits",
	"message_contribution_signature",
	"message_selection_proof",
	"data_attested_header_beacon_parent_root",
	"data_attested_header_beacon_state_root",
	"data_attested_header_beacon_body_root",
	"data_finalized_header_beacon_parent_root",
	"data_finalized_header_beacon_state_root",
	"data_finalized_header_beacon_body_root",
	"data_sync_aggregate_sync_committee_bits",
	"data_sync_aggregate_sync_committee_signature",
	"data_parent_block_root",
	"data_parent_block_hash",
	"data_payload_attributes_prev_randao",
	"data_payload_attributes_suggested_fee_recipient",
	"block_root",
	"kzg_commitment",
	"versioned_hash",
}
