// Copyright 2021-2023
// SPDX-License-Identifier: Apache-2.0
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
// http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package common_test

import (
	"strings"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"github.com/penny-vault/pv-vector/common"
	"github.com/rs/zerolog"
)

var _ = Describe("Common", func() {
	Context("with lz4 compression", func() {
		It("round trips data", func() {
			data := []byte(strings.Repeat(`{"refper":"2018-01-01","value":1}`, 100))
			compressed, err := common.Compress(data)
			Expect(err).To(BeNil())
			Expect(len(compressed)).To(BeNumerically("<", len(data)))
			Expect(common.IsCompressed(compressed)).To(BeTrue())

			decompressed, err := common.Decompress(compressed)
			Expect(err).To(BeNil())
			Expect(decompressed).To(Equal(data))
		})

		It("detects uncompressed data", func() {
			Expect(common.IsCompressed([]byte(`[]`))).To(BeFalse())
			Expect(common.IsCompressed(nil)).To(BeFalse())
		})
	})

	DescribeTable("maps log level names", func(name string, expected zerolog.Level) {
		Expect(common.LogLevel(name)).To(Equal(expected))
	},
		Entry("debug", "debug", zerolog.DebugLevel),
		Entry("upper case", "INFO", zerolog.InfoLevel),
		Entry("warning", "warning", zerolog.WarnLevel),
		Entry("error", "error", zerolog.ErrorLevel),
		Entry("unknown", "chatty", zerolog.WarnLevel),
	)

	Context("with versions", func() {
		It("formats pre-release versions", func() {
			v := common.Version{Major: 1, Minor: 2, Patch: 3, Suffix: "rc1"}
			Expect(v.String()).To(Equal("1.2.3-rc1"))
			Expect(common.Version{Major: 1}.String()).To(Equal("1.0.0"))
		})

		It("describes the running build", func() {
			info := common.CurrentBuild(false)
			Expect(info.Program).To(Equal("pvvector"))
			Expect(info.Version).To(Equal("v" + common.CurrentVersion.String()))
			Expect(info.BuildDate).To(Equal("unknown"))
			Expect(info.Modules).To(BeNil())
			Expect(info.String()).To(HavePrefix("pvvector v"))
			Expect(info.String()).ToNot(ContainSubstring("Modules"))
		})

		It("lists modules on request", func() {
			info := common.CurrentBuild(true)
			Expect(info.Modules).ToNot(BeNil())
			Expect(info.String()).To(ContainSubstring("Modules"))
		})
	})
})
