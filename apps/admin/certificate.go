package main

import (
	"fmt"
	"os"
)

// writeCertificateQR writes the QR code that links to the certificate's verification page.
func (cli *commandLine) writeCertificateQR(number, out string) error {
	cert, err := cli.catSvc.CertificateByNumber(number)
	if err != nil {
		return err
	}
	png, err := cli.certGen.QRCode(cert)
	if err != nil {
		return err
	}
	if out == "" {
		out = number + ".png"
	}
	if err := os.WriteFile(out, png, 0o644); err != nil {
		return err
	}
	fmt.Fprintf(cli.out, "%s: %s\n", out, cli.certGen.VerificationURL(number))
	return nil
}
