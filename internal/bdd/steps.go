package bdd

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/cucumber/godog"

	"github.com/driftlock/timevault/internal/codec"
	"github.com/driftlock/timevault/internal/localindex"
	"github.com/driftlock/timevault/internal/sharecodec"
	"github.com/driftlock/timevault/internal/timelock"
	"github.com/driftlock/timevault/internal/vaultcore"
	"github.com/driftlock/timevault/internal/vef"
)

var ctxBackground = context.Background()

// InitializeScenario registers every step against a fresh world, mirroring
// the teacher's per-scenario TestScenario lifecycle but without the
// HTTP/session machinery this domain has no use for.
func InitializeScenario(sc *godog.ScenarioContext) {
	w := &world{}

	sc.Before(func(ctx context.Context, _ *godog.Scenario) (context.Context, error) {
		*w = world{}
		return ctx, nil
	})

	sc.Step(`^a fresh quicknet test chain$`, w.aFreshQuicknetTestChain)
	sc.Step(`^I seal "([^"]*)" to unlock in (\d+) seconds$`, w.iSealToUnlockInSeconds)
	sc.Step(`^sealing "([^"]*)" to unlock (\d+) seconds in the past fails with "([^"]*)"$`, w.sealingInThePastFailsWith)
	sc.Step(`^unlocking the vault fails with "([^"]*)"$`, w.unlockingTheVaultFailsWith)
	sc.Step(`^unlocking the vault yields "([^"]*)"$`, w.unlockingTheVaultYields)
	sc.Step(`^the beacon produces the vault's round$`, w.theBeaconProducesTheVaultsRound)
	sc.Step(`^I flip a byte in the vault's inline data$`, w.iFlipAByteInTheVaultsInlineData)
	sc.Step(`^I flip a byte in the vault's timelock envelope$`, w.iFlipAByteInTheVaultsTimelockEnvelope)
	sc.Step(`^I export the vault$`, w.iExportTheVault)
	sc.Step(`^I restore the exported vault into an empty index$`, w.iRestoreTheExportedVaultIntoAnEmptyIndex)
	sc.Step(`^I restore the exported vault again into the same index$`, w.iRestoreTheExportedVaultAgainIntoTheSameIndex)
	sc.Step(`^the restore reports "([^"]*)"$`, w.theRestoreReports)
	sc.Step(`^I export a bundle of both vaults$`, w.iExportABundleOfBothVaults)
	sc.Step(`^the first vault is already present in the index$`, w.theFirstVaultIsAlreadyPresentInTheIndex)
	sc.Step(`^I restore the bundle into the index$`, w.iRestoreTheBundleIntoTheIndex)
	sc.Step(`^the bundle restore reports (\d+) total, (\d+) restored, and (\d+) skipped$`, w.theBundleRestoreReports)
	sc.Step(`^I encode the vault as a share fragment$`, w.iEncodeTheVaultAsAShareFragment)
	sc.Step(`^I decode the share fragment$`, w.iDecodeTheShareFragment)
	sc.Step(`^unlocking the decoded vault yields "([^"]*)"$`, w.unlockingTheDecodedVaultYields)
	sc.Step(`^I corrupt the exported document's chain hash$`, w.iCorruptTheExportedDocumentsChainHash)
	sc.Step(`^validating the exported document fails with "([^"]*)"$`, w.validatingTheExportedDocumentFailsWith)
}

func (w *world) aFreshQuicknetTestChain() error {
	return w.resetChain()
}

func (w *world) seal(text string, seconds int64, offset time.Duration) error {
	unlockMs := time.Now().Add(offset).UnixMilli()
	draft, err := vaultcore.CreateDraft(w.chain, []byte(text), unlockMs, false, "")
	if err != nil {
		return err
	}
	ref, err := vaultcore.ArmDraft(ctxBackground, w.client, w.index, draft)
	draft.WipeDraft()
	if err != nil {
		return err
	}
	w.ref = *ref
	w.refs = append(w.refs, *ref)
	return nil
}

func (w *world) iSealToUnlockInSeconds(text string, seconds string) error {
	n, err := strconv.ParseInt(seconds, 10, 64)
	if err != nil {
		return err
	}
	return w.seal(text, n, time.Duration(n)*time.Second)
}

func (w *world) sealingInThePastFailsWith(text, seconds, wantKind string) error {
	n, err := strconv.ParseInt(seconds, 10, 64)
	if err != nil {
		return err
	}
	unlockMs := time.Now().Add(-time.Duration(n) * time.Second).UnixMilli()
	_, sealErr := vaultcore.CreateDraft(w.chain, []byte(text), unlockMs, false, "")
	return expectKind(sealErr, wantKind)
}

func (w *world) unlockingTheVaultFailsWith(wantKind string) error {
	pt, err := vaultcore.Unlock(ctxBackground, w.chain, w.client, w.index, w.ref)
	w.plaintext = pt
	return expectKind(err, wantKind)
}

func (w *world) unlockingTheVaultYields(want string) error {
	pt, err := vaultcore.Unlock(ctxBackground, w.chain, w.client, w.index, w.ref)
	if err != nil {
		return err
	}
	if string(pt) != want {
		return fmt.Errorf("expected plaintext %q, got %q", want, pt)
	}
	return nil
}

func (w *world) theBeaconProducesTheVaultsRound() error {
	sig, err := w.kp.Sign(w.ref.TlockRound)
	if err != nil {
		return err
	}
	w.client.RecordSignature(w.ref.TlockRound, sig)
	return nil
}

func (w *world) iFlipAByteInTheVaultsInlineData() error {
	blob, err := codec.DecodeB64URL(w.ref.InlineData)
	if err != nil {
		return err
	}
	if len(blob) == 0 {
		return fmt.Errorf("inline data is empty, nothing to flip")
	}
	blob[len(blob)-1] ^= 0x01
	w.ref.InlineData = codec.EncodeB64URL(blob)
	return nil
}

func (w *world) iFlipAByteInTheVaultsTimelockEnvelope() error {
	env, err := timelock.DecodeEnvelope(w.ref.TlockCiphertext)
	if err != nil {
		return err
	}
	env.V[0] ^= 0x01
	w.ref.TlockCiphertext = timelock.EncodeEnvelope(env)
	return nil
}

func (w *world) iExportTheVault() error {
	doc, err := vef.Export(w.ref, "test")
	if err != nil {
		return err
	}
	w.exported = doc
	return nil
}

func (w *world) iRestoreTheExportedVaultIntoAnEmptyIndex() error {
	// Sealing already persisted the vault into w.index, so the restore
	// target is a fresh index.
	w.index = localindex.NewMemory()
	w.existing = map[string]struct{}{}
	w.restoreOut = vef.RestoreOne(ctxBackground, w.exported, w.existing, w.index)
	return nil
}

func (w *world) iRestoreTheExportedVaultAgainIntoTheSameIndex() error {
	existing, err := w.index.IDs(ctxBackground)
	if err != nil {
		return err
	}
	w.existing = existing
	w.restoreOut = vef.RestoreOne(ctxBackground, w.exported, w.existing, w.index)
	return nil
}

func (w *world) theRestoreReports(status string) error {
	switch status {
	case "restored":
		if !w.restoreOut.Restored {
			return fmt.Errorf("expected restored=true, got %+v", w.restoreOut)
		}
	case "skipped":
		if !w.restoreOut.Skipped {
			return fmt.Errorf("expected skipped=true, got %+v", w.restoreOut)
		}
	default:
		return fmt.Errorf("unknown restore status %q", status)
	}
	return nil
}

func (w *world) iExportABundleOfBothVaults() error {
	b, errs := vef.ExportBundle(w.refs, "test", time.Now().UnixMilli())
	if len(errs) > 0 {
		return errs[0]
	}
	w.bundle = b
	return nil
}

func (w *world) theFirstVaultIsAlreadyPresentInTheIndex() error {
	if len(w.refs) == 0 {
		return fmt.Errorf("no sealed vaults to seed the index with")
	}
	// Sealing persisted every vault into w.index; the restore target is a
	// fresh index holding only the first one.
	w.index = localindex.NewMemory()
	if err := w.index.Put(ctxBackground, w.refs[0]); err != nil {
		return err
	}
	existing, err := w.index.IDs(ctxBackground)
	if err != nil {
		return err
	}
	w.existing = existing
	return nil
}

func (w *world) iRestoreTheBundleIntoTheIndex() error {
	w.bundleOut = vef.RestoreBundle(ctxBackground, w.bundle, w.existing, w.index)
	return nil
}

func (w *world) theBundleRestoreReports(total, restored, skipped string) error {
	wantTotal, err := strconv.Atoi(total)
	if err != nil {
		return err
	}
	wantRestored, err := strconv.Atoi(restored)
	if err != nil {
		return err
	}
	wantSkipped, err := strconv.Atoi(skipped)
	if err != nil {
		return err
	}
	if w.bundleOut.Total != wantTotal || w.bundleOut.Restored != wantRestored || w.bundleOut.Skipped != wantSkipped {
		return fmt.Errorf("expected total=%d restored=%d skipped=%d, got %+v", wantTotal, wantRestored, wantSkipped, w.bundleOut)
	}
	return nil
}

func (w *world) iEncodeTheVaultAsAShareFragment() error {
	frag, err := sharecodec.EncodeVault(w.ref)
	if err != nil {
		return err
	}
	w.fragment = frag
	return nil
}

func (w *world) iDecodeTheShareFragment() error {
	ref, err := sharecodec.DecodeVault(w.fragment, w.ref.ID)
	if err != nil {
		return err
	}
	w.decodedRef = ref
	return nil
}

func (w *world) unlockingTheDecodedVaultYields(want string) error {
	pt, err := vaultcore.Unlock(ctxBackground, w.chain, w.client, w.index, w.decodedRef)
	if err != nil {
		return err
	}
	if string(pt) != want {
		return fmt.Errorf("expected plaintext %q, got %q", want, pt)
	}
	return nil
}

func (w *world) iCorruptTheExportedDocumentsChainHash() error {
	w.exported.Timelock.ChainHash = strings.Repeat("0", 64)
	raw, err := json.Marshal(w.exported)
	if err != nil {
		return err
	}
	w.corruptedDoc = raw
	return nil
}

func (w *world) validatingTheExportedDocumentFailsWith(wantKind string) error {
	_, err := vef.Validate(w.corruptedDoc)
	return expectKind(err, wantKind)
}
